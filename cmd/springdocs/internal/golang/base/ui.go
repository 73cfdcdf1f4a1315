// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package base

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrOpCancelled is returned when an operation is cancelled by the user.
var ErrOpCancelled = errors.New("operation cancelled")

// YesNo asks the user a yes/no question on the terminal.
func YesNo(message string) (bool, error) {
	return YesNoWR(os.Stdout, os.Stdin, message)
}

// YesNoWR writes the question to w and reads the answer from r.  An empty
// answer is "no".  It returns ErrOpCancelled if r is closed before the user
// answers.
func YesNoWR(w io.Writer, r io.Reader, message string) (bool, error) {
	const pleaseAnswerYN = "Please answer yes or no and press Enter or Return."
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, message, "? (y/N) ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return false, err
			}
			return false, ErrOpCancelled
		}
		resp := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch resp {
		case "":
			return false, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, pleaseAnswerYN)
	}
}
