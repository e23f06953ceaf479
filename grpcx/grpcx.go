/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx maps validation failures to gRPC statuses carrying
// google.rpc.ErrorInfo and google.rpc.BadRequest details.
package grpcx

import (
	"context"
	"errors"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/adapter"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/schema"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// ToStatus converts an outcome into a gRPC status. A valid outcome yields
// an OK status.
func ToStatus(out schema.Outcome, m apis.Mapper) *gstatus.Status {
	var de *denvelope.Error
	if !errors.As(out.Err(), &de) {
		return gstatus.New(gcodes.OK, "")
	}
	return FromError(de, m)
}

// FromError converts a denvelope.Error into a gRPC status. The code is
// resolved via the Mapper from the first diagnostic, or from the error's
// reason when it carries none.
//
// The status carries an ErrorInfo and, when there are diagnostics, a
// BadRequest with one field violation per diagnostic. If the details
// cannot be attached the bare status is returned.
func FromError(e *denvelope.Error, m apis.Mapper) *gstatus.Status {
	var st apis.Status
	if len(e.Diagnostics) > 0 {
		st = m.Resolve(e.Diagnostics)
	} else {
		st = m.Status(e.Reason)
	}
	code := st.GRPC
	if code == gcodes.OK {
		// an OK status cannot carry details or describe a failure
		code = gcodes.Unknown
	}

	base := gstatus.New(code, e.Message)
	details := []protoadapt.MessageV1{adapter.ToErrorInfo(e, st)}
	if br := adapter.ToBadRequest(e.Diagnostics); br != nil {
		details = append(details, br)
	}
	if with, err := base.WithDetails(details...); err == nil {
		return with
	}
	return base
}

// Violations pulls the diagnostics out of a gRPC error, if present.
// Useful in tests and client code.
func Violations(err error) []apis.Diagnostic {
	if err == nil {
		return nil
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil
	}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			return adapter.FromBadRequest(br)
		}
	}
	return nil
}

// Info pulls the ErrorInfo out of a gRPC error, if present.
func Info(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// *denvelope.Error handler errors into gRPC statuses via FromError. Other
// errors are returned as-is. Converted errors are logged at warn level.
func UnaryServerInterceptor(m apis.Mapper, log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var de *denvelope.Error
		if !errors.As(err, &de) {
			return nil, err
		}

		st := FromError(de, m)
		log.Warn().
			Str("method", info.FullMethod).
			Str("code", st.Code().String()).
			Str("envelope_code", string(de.Code)).
			Int("diagnostics", len(de.Diagnostics)).
			Msg("envelope_error")
		return nil, st.Err()
	}
}
