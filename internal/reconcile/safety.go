package reconcile

import (
	"github.com/rpggio/siteledger/internal/domain/project"
	"github.com/rpggio/siteledger/internal/domain/worklog"
)

// AggregateSafetyIssues counts logs across every project and task that
// report a real safety issue.
func AggregateSafetyIssues(projects []project.Project) int {
	n := 0
	for _, p := range projects {
		for _, t := range p.Tasks {
			for _, l := range t.WorkLogs {
				if l.HasSafetyIssue() {
					n++
				}
			}
		}
	}
	return n
}

// SafetyIssues lists the logs that report a real safety issue.
func SafetyIssues(logs []worklog.WorkLog) []worklog.WorkLog {
	out := []worklog.WorkLog{}
	for _, l := range logs {
		if l.HasSafetyIssue() {
			out = append(out, l)
		}
	}
	return out
}
