package project

import "github.com/rpggio/siteledger/internal/domain/worklog"

// FlattenWorkLogs walks projects, then tasks, then logs in order and returns
// copies of every log stamped with its project and task identity.
func FlattenWorkLogs(projects []Project) []worklog.WorkLog {
	logs := []worklog.WorkLog{}
	for _, p := range projects {
		for _, t := range p.Tasks {
			for _, l := range t.WorkLogs {
				l.ProjectID = p.ID
				l.ProjectName = p.Name
				l.TaskID = t.ID
				l.TaskName = t.Name
				logs = append(logs, l)
			}
		}
	}
	return logs
}
