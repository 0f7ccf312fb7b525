package js

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	debugLabel = color.New(color.FgBlue, color.Bold)
	debugText  = color.New(color.FgBlue)
	replText   = color.New(color.FgGreen)
	errLabel   = color.New(color.FgRed, color.Bold)
	errText    = color.New(color.FgRed)

	// Prompt is the repl prompt, a bold green arrow.
	Prompt = color.New(color.FgGreen, color.Bold).Sprint("> ")
)

func LogDebug(args ...string) {
	fmt.Fprintln(color.Output, debugLabel.Sprint("debug: ")+debugText.Sprint(strings.Join(args, " ")))
}

func LogDebugf(s string, args ...interface{}) {
	LogDebug(fmt.Sprintf(s, args...))
}

func LogInteractive(args ...string) {
	fmt.Fprintln(color.Output, replText.Sprint(strings.Join(args, " ")))
}

func LogInteractivef(s string, args ...interface{}) {
	LogInteractive(fmt.Sprintf(s, args...))
}

func LogSafeErr(reason Reason, args ...string) {
	fmt.Fprintln(color.Error, errLabel.Sprint(reason.String()+": ")+errText.Sprint(strings.Join(args, " ")))
}

// LogError logs err under its Reason, or as a system error if err
// did not come from the interpreter.
func LogError(err error) {
	reason := ReasonOf(err)
	if reason == ErrUnknown {
		reason = ErrSystem
	}
	// wrapped errors keep their context, bare ones print message then position
	e, ok := err.(Err)
	if !ok || !e.Position().IsValid() {
		LogSafeErr(reason, err.Error())
		return
	}
	LogSafeErr(reason, e.Message(), "["+e.Position().String()+"]")
}

// LogErr logs and exits the process with the reason as exit code.
// Only the command line frontend should call it.
func LogErr(reason Reason, args ...string) {
	LogSafeErr(reason, args...)
	os.Exit(int(reason))
}

func LogErrf(reason Reason, s string, args ...interface{}) {
	LogErr(reason, fmt.Sprintf(s, args...))
}
