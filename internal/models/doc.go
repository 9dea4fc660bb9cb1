// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package models defines the wire-level types shared across the HTTP API:
// the response envelope, error payloads and request bodies. Engine-internal
// types live with the engine; only what crosses the wire belongs here.
package models
