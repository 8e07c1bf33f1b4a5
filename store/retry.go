/*
Copyright © 2026 the SDR authors.
This file is part of SDR.

SDR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SDR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SDR.  If not, see <http://www.gnu.org/licenses/>.
*/

package store

import (
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

// ExponentialBackOff returns a constructor for exponential backoffs
// that give up after maxRetries retries.
func ExponentialBackOff(maxRetries uint64) func() backoff.BackOff {
	return func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	}
}

// Retry returns an Opener that retries open when it fails, waiting
// between attempts as directed by a BackOff from newBackOff. Files
// that do not exist, cannot be accessed, or are not in a known format
// are not retried.
func Retry(open Opener, newBackOff func() backoff.BackOff, log logrus.FieldLogger) Opener {
	return func(filename string) (File, error) {
		var f File
		var permanent error
		err := backoff.RetryNotify(
			func() error {
				var err error
				f, err = open(filename)
				if err != nil && !transient(err) {
					permanent = err
					return nil
				}
				return err
			},
			newBackOff(),
			func(err error, d time.Duration) {
				log.WithError(err).WithField("file", filename).Warnf("opening failed; retrying in %v", d)
			},
		)
		if permanent != nil {
			return nil, permanent
		}
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

func transient(err error) bool {
	var fe FormatError
	switch {
	case errors.As(err, &fe):
		return false
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return false
	}
	return true
}
