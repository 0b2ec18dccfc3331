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


// Package hebrew provides text utilities for matching Hebrew discourse titles.
//
// Hebrew search queries rarely match stored titles verbatim: niqqud marks,
// half a dozen incompatible quote characters, plene/defective spelling
// (medial vav, yod and he) and rabbinic abbreviations all get in the way.
// This package normalizes both sides of a comparison onto common ground:
//
//   - Normalize collapses a string at a chosen aggressiveness level
//   - Expander rewrites abbreviations ("ש"פ") into their full forms
//   - ExtractYear pulls a Hebrew year token ("תשי״א") out of free text
//   - CleanName and ExtractTitle reduce raw input to the bare title words
package hebrew
