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

package mapper

import (
	"net/http"

	"dirpx.dev/denvelope/reason"
	"google.golang.org/grpc/codes"
)

// defaultHTTP is the built-in HTTP status per diagnostic kind.
var defaultHTTP = map[reason.Kind]int{
	reason.KindStructural:  http.StatusBadRequest,          // Unknown or missing fields, wrong JSON types.
	reason.KindFormat:      http.StatusBadRequest,          // Field present but malformed.
	reason.KindConditional: http.StatusUnprocessableEntity, // Well-formed fields that contradict the status.
}

// defaultGRPC is the built-in gRPC code per diagnostic kind.
var defaultGRPC = map[reason.Kind]codes.Code{
	reason.KindStructural:  codes.InvalidArgument,
	reason.KindFormat:      codes.InvalidArgument,
	reason.KindConditional: codes.FailedPrecondition,
}
