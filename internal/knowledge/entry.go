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

package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Entry is a single documentation resource.
type Entry struct {
	Title       string   `toml:"title" json:"title" validate:"required"`
	Description string   `toml:"description" json:"description,omitempty"`
	Category    string   `toml:"category" json:"category" validate:"required"`
	URL         string   `toml:"url" json:"url" validate:"required,url"`
	Keywords    []string `toml:"keywords" json:"keywords" validate:"required,min=1,dive,required"`
	Version     string   `toml:"version" json:"version" validate:"required"`
}

// ErrInvalidDataset is returned when the dataset fails validation.
var ErrInvalidDataset = errors.New("invalid dataset")

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	// errTranslations translates validation errors to English.
	errTranslations ut.Translator
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	errTranslations, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, errTranslations); err != nil {
		panic(err)
	}
}

// Validate validates the entry.
func (e *Entry) Validate() error {
	return validate.Struct(e)
}

// validateEntries validates every entry, and returns an error listing all
// problems found, prefixed with the entry index and title.
func validateEntries(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidDataset)
	}
	var problems []string
	for i := range entries {
		err := entries[i].Validate()
		if err == nil {
			continue
		}
		var vErr validator.ValidationErrors
		if !errors.As(err, &vErr) {
			return err
		}
		for _, msg := range vErr.Translate(errTranslations) {
			problems = append(problems, fmt.Sprintf("entry %d (%q): %s", i, entries[i].Title, msg))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w:\n\t%s", ErrInvalidDataset, strings.Join(problems, "\n\t"))
	}
	return nil
}
