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

// Package envelope is the typed Go model of the standardized response
// envelope.
//
// Producers build envelopes with New and functional options; New fills the
// timestamp and version when they are omitted. The JSON encoding of an
// Envelope uses exactly the keys package schema accepts, and optional
// fields are omitted rather than sent as null:
//
//	env := envelope.New(schema.StatusSuccess, envelope.Msg(code.Success, "ok"),
//	    envelope.WithIdentifiers(cfg),
//	    envelope.WithData(payload),
//	)
//	out := validator.Validate(env)
//
// A partial envelope must carry at least one result item in this model:
// an empty Result slice is omitted on encoding and the encoded envelope
// then lacks the result key its status requires.
package envelope
