package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Add(ctx context.Context) error  { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	f.calls = append(f.calls, "edit "+id)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}
func (f *fakeExec) Export(ctx context.Context) error {
	f.calls = append(f.calls, "export")
	return nil
}

func silenceREPL(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = v.(string)
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &printed
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silenceREPL(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list",
		"login",
		"help",
		"add",
		"l",
		"edit 42",
		"delete 42",
		"export",
		"logout",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "add", "list", "edit 42", "delete 42", "export", "logout"}, exec.calls)
}

func TestRunREPL_GuardsAndUsage(t *testing.T) {
	printed := silenceREPL(t)

	input := strings.NewReader("add\nedit\nfoobar\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))
	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{"Please register or login first.", "Please register or login first.", "Unknown command: foobar", "Bye!"}, *printed)

	*printed = nil
	exec = &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("edit\ndelete")))
	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{"Usage: edit <id>", "Usage: delete <id>"}, *printed)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silenceREPL(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\n")))
	assert.Empty(t, exec.calls)
}
