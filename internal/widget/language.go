// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// AutoLanguage selects backend language detection.
const AutoLanguage = "auto"

// ErrInvalidLanguage is returned for override codes that are not BCP 47.
var ErrInvalidLanguage = errors.New("invalid language code")

// NormalizeLanguage reduces a BCP 47 tag to its base language code
// ("ES" and "es-MX" both become "es"). Empty input and "auto" return "".
func NormalizeLanguage(code string) (string, error) {
	c := strings.TrimSpace(code)
	if c == "" || strings.EqualFold(c, AutoLanguage) {
		return "", nil
	}
	tag, err := language.Parse(c)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	base, conf := tag.Base()
	if conf == language.No || base.String() == "und" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	return base.String(), nil
}
