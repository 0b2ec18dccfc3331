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


package humains

import "errors"

var (
	// ErrNotAuthenticated is returned when a token is requested before any
	// successful login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthenticationFailed is returned when the login endpoint rejects
	// the configured credentials or answers without a token.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInjectionFailed is returned when the inject endpoint rejects the
	// payload after any auth retry has been exhausted.
	ErrInjectionFailed = errors.New("injection failed")

	// ErrCredentialsRequired is returned when a Client is created without
	// username, password, or endpoint URLs.
	ErrCredentialsRequired = errors.New("credentials and endpoint URLs required")
)
