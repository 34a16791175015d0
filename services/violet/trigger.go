// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package violet implements the response-generation core of the
// Shop&Glow assistant: admin-trigger detection, business-context
// assembly, prompt building, response orchestration and intent
// classification.
package violet

import "strings"

// adminTriggerCodes are the phrases that escalate a customer session
// into admin mode when they appear anywhere in a chat message.
var adminTriggerCodes = []string{
	"violet-admin-2024",
	"admin-mode-violet",
	"shopglow-admin",
}

// DetectAdminTrigger reports whether the message contains an admin
// trigger code. Matching is case-insensitive substring matching.
func DetectAdminTrigger(message string) bool {
	lower := strings.ToLower(message)
	for _, code := range adminTriggerCodes {
		if strings.Contains(lower, code) {
			return true
		}
	}
	return false
}
