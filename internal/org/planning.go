package org

// Planning holds the deadline/scheduled/closed timestamps attached to a
// headline via its planning line.
type Planning struct {
	Deadline  *Timestamp `json:"deadline,omitempty"`
	Scheduled *Timestamp `json:"scheduled,omitempty"`
	Closed    *Timestamp `json:"closed,omitempty"`
}

// IsEmpty reports whether no timestamps are set.
func (p *Planning) IsEmpty() bool {
	return p == nil || (p.Deadline == nil && p.Scheduled == nil && p.Closed == nil)
}

// FormattedDeadline returns the org-formatted deadline, or "".
func (p *Planning) FormattedDeadline() string {
	if p == nil || p.Deadline == nil {
		return ""
	}
	return p.Deadline.Format()
}

// FormattedScheduled returns the org-formatted scheduled timestamp, or "".
func (p *Planning) FormattedScheduled() string {
	if p == nil || p.Scheduled == nil {
		return ""
	}
	return p.Scheduled.Format()
}

// FormattedClosed returns the org-formatted closed timestamp, or "".
func (p *Planning) FormattedClosed() string {
	if p == nil || p.Closed == nil {
		return ""
	}
	return p.Closed.Format()
}

func (p *Planning) fingerprint() string {
	if p.IsEmpty() {
		return ""
	}
	return p.Deadline.fingerprint() + "|" + p.Scheduled.fingerprint() + "|" + p.Closed.fingerprint()
}
