package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func stubTerminal(t *testing.T, tty bool, pw []byte, err error) {
	t.Helper()
	oldRead, oldIsTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldIsTerm })
	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return pw, err }
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer
	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)
	in := bufio.NewReader(strings.NewReader("untouched\n"))
	var out bytes.Buffer
	pw, err := GetPassword(in, &out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Enter password: \n", out.String())

	rest, _ := in.ReadString('\n')
	require.Equal(t, "untouched\n", rest)
}

func TestGetPassword_PipedStdin(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unix newline", input: "pw one\nnext\n", want: "pw one"},
		{name: "crlf", input: "pw\r\n", want: "pw"},
		{name: "spaces are kept", input: "  pw  \n", want: "  pw  "},
		{name: "no trailing newline", input: "last", want: "last"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			pw, err := GetPassword(bufio.NewReader(strings.NewReader(tt.input)), &out)
			require.NoError(t, err)
			require.Equal(t, []byte(tt.want), pw)
		})
	}
}

func TestGetPassword_PipedStdinEOF(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	var out bytes.Buffer
	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), &out)
	require.ErrorIs(t, err, io.EOF)
}
