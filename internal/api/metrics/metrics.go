// Package metrics defines and registers all custom Prometheus metrics for
// the Inkwell API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inkwell"

// RegistrationsTotal counts successfully created user accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token rotations.
// Label:
//   - result: "success" or "failure" (failure includes reuse of a
//     rotated-out token)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token rotation attempts, labelled by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts forgot/reset-password progress.
// Label:
//   - stage: "requested" (mail dispatched) or "completed" (password changed)
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset flows, labelled by stage.",
	},
	[]string{"stage"},
)

// BlogsCreatedTotal counts newly published posts.
var BlogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blogs_created_total",
		Help:      "Total number of blog posts created.",
	},
)
