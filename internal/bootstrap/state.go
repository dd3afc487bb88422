package bootstrap

// State is a step of the bootstrap sequence.
type State int32

const (
	StateInit State = iota
	StateConnectivityChecked
	StateCredentialsResolved
	StateAuthConfigured
	StateReady
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateConnectivityChecked:
		return "connectivity_checked"
	case StateCredentialsResolved:
		return "credentials_resolved"
	case StateAuthConfigured:
		return "auth_configured"
	case StateReady:
		return "ready"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the sequence can make no further progress.
func (s State) Terminal() bool {
	return s == StateReady || s == StateAborted
}
