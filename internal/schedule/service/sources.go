package service

import (
	"context"

	"camplan/pkg/model"
)

// The schedule services read kids, trips, camps and sessions but never
// write them; these narrow interfaces are what the family and camps
// repositories satisfy.

type KidSource interface {
	FindByID(ctx context.Context, familyID, id string) (*model.Kid, error)
	FindByFamily(ctx context.Context, familyID string) ([]*model.Kid, error)
}

type TripSource interface {
	FindByFamily(ctx context.Context, familyID string) ([]*model.Trip, error)
}

type SessionSource interface {
	FindByID(ctx context.Context, familyID, id string) (*model.Session, error)
	FindByFamily(ctx context.Context, familyID string) ([]*model.Session, error)
}

type CampSource interface {
	FindByID(ctx context.Context, familyID, id string) (*model.Camp, error)
}
