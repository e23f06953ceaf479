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

// Package config holds the settings consulted when validating structured
// identifiers: the scope identifier every id must start with, and the kind
// names used for request and trace ids.
//
// The preferred way to use it is to build a Config once at startup
// (Default, FromEnv, Load) and hand it to the schema validator explicitly.
// For hosts that want a single process-wide setting, Shared exposes a lazily
// initialized registry. Its setters publish immutable snapshots, so reads
// racing with a setter always observe a complete Config. Changing the
// registry after validation traffic has started is still unsupported for
// correctness: in-flight validations may see either the old or the new
// snapshot.
//
// Configuration values are not validated. Empty kind names simply make
// every identifier fail its format check.
package config
