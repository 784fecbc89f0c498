// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is fatal at startup: the plan server would have
// nothing to serve resolutions or plans on.
var errNoHandlersAreCreated = errors.New("no transport handlers: set an HTTP or gRPC address")
