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


// Package server exposes maamar search over HTTP.
//
// Endpoints:
//   - GET /health: liveness probe
//   - GET|POST /search: name, question, and top_n in query parameters or a
//     JSON body; the platform's enveloped array form is also accepted
//   - GET /metrics: Prometheus metrics
//
// The search endpoint keeps the external platform's field contract,
// including the quastion spelling and the article alias for name. When a
// request arrives in the enveloped form with conversation routing headers,
// the first answer is pushed into the conversation after the HTTP response
// value is computed; injection outcomes never change that response.
package server
