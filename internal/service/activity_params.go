package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/pkg/diff"
)

// ActivityActor identifies who performed a mutation. The only
// implementations are UserActor and CronActor.
type ActivityActor interface {
	activityActor() (models.ActivityActorType, string)
}

// UserActor is a back-office user acting through the API.
type UserActor struct {
	ID string `json:"id"`
}

func (a UserActor) activityActor() (models.ActivityActorType, string) {
	return models.ActivityActorUser, a.ID
}

// CronActor is a scheduled job acting on its own.
type CronActor struct {
	ID string `json:"cron_id"`
}

func (a CronActor) activityActor() (models.ActivityActorType, string) {
	return models.ActivityActorCron, a.ID
}

// ActivityChange describes the mutation being audited. The only
// implementations are ActivityCreated, ActivityUpdated and ActivityDeleted.
type ActivityChange interface {
	activityAction() models.ActivityAction
}

// ActivityCreated carries the full state of a new resource.
type ActivityCreated struct {
	After diff.Object `json:"after"`
}

func (ActivityCreated) activityAction() models.ActivityAction { return models.ActivityActionCreate }

// ActivityUpdated carries the states of a resource around an update.
type ActivityUpdated struct {
	Before diff.Object `json:"before"`
	After  diff.Object `json:"after"`
}

func (ActivityUpdated) activityAction() models.ActivityAction { return models.ActivityActionUpdate }

// ActivityDeleted carries the last state of a removed resource.
type ActivityDeleted struct {
	Before diff.Object `json:"before"`
}

func (ActivityDeleted) activityAction() models.ActivityAction { return models.ActivityActionDelete }

// ActivityParams describes one mutation to record.
type ActivityParams struct {
	Actor      ActivityActor           `json:"actor"`
	Resource   models.ActivityResource `json:"resource"`
	ResourceID string                  `json:"resource_id"`
	Change     ActivityChange          `json:"change"`
}

func (p ActivityParams) action() string {
	action, ok := changeAction(p.Change)
	if !ok {
		return "UNKNOWN"
	}
	return string(action)
}

// changeAction resolves the action of a change, rejecting nil values
// including typed nil pointers.
func changeAction(change ActivityChange) (models.ActivityAction, bool) {
	switch c := change.(type) {
	case nil:
		return "", false
	case *ActivityCreated:
		if c == nil {
			return "", false
		}
	case *ActivityUpdated:
		if c == nil {
			return "", false
		}
	case *ActivityDeleted:
		if c == nil {
			return "", false
		}
	}
	return change.activityAction(), true
}

var (
	errActivityActorMissing  = errors.New("activity actor is required")
	errActivityChangeMissing = errors.New("activity change is required")
)

// buildActivityLog assembles the audit entry for params without persisting it.
func buildActivityLog(params ActivityParams) (models.ActivityLog, error) {
	if params.Actor == nil {
		return models.ActivityLog{}, errActivityActorMissing
	}
	action, ok := changeAction(params.Change)
	if !ok {
		return models.ActivityLog{}, errActivityChangeMissing
	}

	actorType, actorID := params.Actor.activityActor()
	if strings.TrimSpace(actorID) == "" {
		return models.ActivityLog{}, fmt.Errorf("activity actor %s has no identifier", strings.ToLower(string(actorType)))
	}

	entry := models.ActivityLog{
		ActorType:  actorType,
		ActorID:    actorID,
		Action:     action,
		Resource:   params.Resource,
		ResourceID: params.ResourceID,
	}
	if actorType == models.ActivityActorUser {
		userID := actorID
		entry.UserID = &userID
	}

	before, after := simplifyDiff(params.Change)
	entry.Before = jsonMap(before)
	entry.After = jsonMap(after)

	entry.LinkResource()

	return entry, nil
}

// simplifyDiff returns the normalized payloads stored for a change: the full
// state for creations and deletions, only the changed keys for updates.
func simplifyDiff(change ActivityChange) (diff.Object, diff.Object) {
	switch c := change.(type) {
	case ActivityCreated:
		return nil, diff.Normalize(orEmpty(c.After))
	case ActivityDeleted:
		return diff.Normalize(orEmpty(c.Before)), nil
	case ActivityUpdated:
		changed := diff.Diff(c.Before, c.After)
		return diff.Normalize(changed.Before), diff.Normalize(changed.After)
	case *ActivityCreated:
		return simplifyDiff(*c)
	case *ActivityDeleted:
		return simplifyDiff(*c)
	case *ActivityUpdated:
		return simplifyDiff(*c)
	default:
		return nil, nil
	}
}

func orEmpty(obj diff.Object) diff.Object {
	if obj == nil {
		return diff.Object{}
	}
	return obj
}

func jsonMap(obj diff.Object) datatypes.JSONMap {
	if obj == nil {
		return nil
	}
	return datatypes.JSONMap(obj)
}
