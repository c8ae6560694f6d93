/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a backoff.Notify that reports each failed attempt.
func Logger(err error, next time.Duration) {
	logrus.WithError(err).WithField("retry_in", next).Warn("operation failed, retrying")
}
