// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mason

// Error constructs a Mason error document. The "@messages" list is
// always present, even when no detail messages are given, matching
// what existing clients of the format expect.
func Error(resourceURL, message string, details ...string) *Document {
	if details == nil {
		details = []string{}
	}

	return New(
		F("resource_url", resourceURL),
		F(ErrorKey, New(
			F("@message", message),
			F("@messages", details),
		)),
	)
}
