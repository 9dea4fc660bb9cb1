// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package middleware provides HTTP middleware shared by all routes:
// request ID propagation and Prometheus instrumentation. Cross-cutting
// concerns with external configuration (CORS, rate limiting) are composed
// directly in the router from their chi ecosystem packages.
package middleware
