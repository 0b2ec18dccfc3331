// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package humains pushes search answers into Humains chat conversations.
//
// The Client logs in once with HTTP Basic credentials and keeps the bearer
// token for all inject calls. A 401 from the inject endpoint triggers
// exactly one re-login and one retry; concurrent re-logins collapse into a
// single in-flight request. Injection is fire-and-forget from the caller's
// point of view: failures are reported but never affect the search response
// that triggered them.
package humains
