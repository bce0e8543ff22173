//go:build !windows

package mouse

import "errors"

func systemInstall(Handler) (func() error, error) {
	return nil, errors.New("mouse hook requires windows")
}
