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

// Package adapter converts validation diagnostics to and from the
// google.rpc error detail messages shared by the HTTP and gRPC layers.
package adapter

import (
	"strconv"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/reason"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
)

// Domain is the ErrorInfo domain stamped on every converted error.
const Domain = "denvelope.dirpx.dev"

// ToBadRequest converts diagnostics into a google.rpc.BadRequest, one field
// violation per diagnostic, in order. It returns nil for no diagnostics.
func ToBadRequest(diags []apis.Diagnostic) *errdetails.BadRequest {
	if len(diags) == 0 {
		return nil
	}
	br := &errdetails.BadRequest{
		FieldViolations: make([]*errdetails.BadRequest_FieldViolation, 0, len(diags)),
	}
	for _, d := range diags {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       d.Field,
			Description: d.Message,
			Reason:      string(d.Reason),
		})
	}
	return br
}

// FromBadRequest is the inverse of ToBadRequest. Violations whose reason
// does not parse keep an empty reason.
func FromBadRequest(br *errdetails.BadRequest) []apis.Diagnostic {
	if br == nil || len(br.GetFieldViolations()) == 0 {
		return nil
	}
	out := make([]apis.Diagnostic, 0, len(br.GetFieldViolations()))
	for _, fv := range br.GetFieldViolations() {
		r, err := reason.Parse(fv.GetReason())
		if err != nil {
			r = reason.Empty
		}
		out = append(out, apis.Diagnostic{
			Field:   fv.GetField(),
			Reason:  r,
			Message: fv.GetDescription(),
		})
	}
	return out
}

// ToErrorInfo converts an error together with its resolved transport
// status into a google.rpc.ErrorInfo. The message code becomes the info
// reason; the diagnostic reason and statuses travel as metadata.
func ToErrorInfo(e *denvelope.Error, st apis.Status) *errdetails.ErrorInfo {
	if e == nil {
		return nil
	}
	md := map[string]string{
		"http_status": strconv.Itoa(st.HTTP),
		"grpc_code":   st.GRPC.String(),
	}
	if e.Reason != reason.Empty {
		md["reason"] = string(e.Reason)
	}
	if n := len(e.Diagnostics); n > 0 {
		md["diagnostics"] = strconv.Itoa(n)
	}
	return &errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: md,
	}
}
