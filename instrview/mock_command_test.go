package instrview_test

import "github.com/dmsc-instrument/cow-instrument/component"

// unknownCommand stands in for a mockgen-generated double: Command's
// marker method is unexported, so a real test package cannot implement
// it directly. Embedding the (nil) interface promotes the method and
// satisfies Command structurally without ever invoking it — exactly
// what's needed to exercise the "unrecognized command" branch of a type
// switch from outside the component package.
type unknownCommand struct {
	component.Command
}
