package config

import "time"

// Env key constants. All controller configuration env vars use the
// LINKERD_CNI_REPAIR_CONTROLLER_ prefix; duration values support explicit
// units (e.g. 5s, 1m).

const envPrefix = "LINKERD_CNI_REPAIR_CONTROLLER_"

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = envPrefix + "KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = envPrefix + "KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = envPrefix + "LOG_LEVEL"

// Log format: json, text or plain.
const envKeyLogFormat = envPrefix + "LOG_FORMAT"

// Node the controller is scheduled on. Only pods of this node are watched.
const envKeyNodeName = envPrefix + "NODE_NAME"

// Name of the controller's own pod, reported as the events' reporting instance.
const envKeyPodName = envPrefix + "POD_NAME"

// Remediation mode: delete or evict.
const envKeyMode = envPrefix + "MODE"

// Port for the admin server (health, readiness and metrics).
const envKeyAdminPort = envPrefix + "ADMIN_PORT"

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = envPrefix + "PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Cron expression for re-evaluating every cached pod; empty disables resync.
const envKeyResyncSchedule = envPrefix + "RESYNC_SCHEDULE"

// IANA timezone of the resync schedule.
const envKeyResyncTZ = envPrefix + "RESYNC_TZ"

// Standard k8s env keys used as fallback when the prefixed keys are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultMode           = "delete"
	defaultAdminPort      = "9990"
	defaultPingerInterval = 10 * time.Second
	defaultResyncTZ       = "UTC"
)
