package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// confirmIfExists checks that a file exists and asks the user for
// confirmation before overwriting it. It returns true if the file doesn't
// exist, or if the user answered yes. If ok is false, the caller should
// abort.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return true, nil
		}
		return false, errors.Wrapf(statErr, "stat %q", path)
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation shows msg and reads a y/n answer from stdin, defaulting
// to no on a bare ENTER.
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)

	for {
		input, _ := reader.ReadString('\n')
		if len(input) == 0 || input[0] == '\n' {
			return false
		}
		switch input[0] {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	return f, nil
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %q", path)
	}
	return f, nil
}
