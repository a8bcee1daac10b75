package network

import (
	// Go Internal Packages
	"context"
	"fmt"

	// Local Packages
	errors "network-ops/errors"
	metrics "network-ops/metrics"
	models "network-ops/models"

	// External Packages
	"go.uber.org/zap"
)

type DownlineRepository interface {
	FetchDownline(ctx context.Context, rootUsername string) ([]models.DownlineRecord, error)
}

type UserRepository interface {
	FindUser(ctx context.Context, username string) (models.User, error)
}

// Service builds a fresh tree on every call; nothing is cached between users.
type Service struct {
	Logger   *zap.Logger
	Downline DownlineRepository
	Users    UserRepository
}

func NewService(logger *zap.Logger, downline DownlineRepository, users UserRepository) *Service {
	return &Service{Logger: logger, Downline: downline, Users: users}
}

// Tree returns root's full network together with the depth root may expand.
func (s *Service) Tree(ctx context.Context, root models.User) (models.NetworkTree, error) {
	if root.Username == "" {
		return models.NetworkTree{}, errors.EmptyParamErr("username")
	}

	records, err := s.Downline.FetchDownline(ctx, root.Username)
	if err != nil {
		return models.NetworkTree{}, errors.TransportErr("fetch downline", err)
	}

	tree, orphans := Assemble(root, records)
	for _, o := range orphans {
		s.Logger.Debug("dropping orphan referral record",
			zap.String("root", root.Username),
			zap.String("username", o.Username),
			zap.Int("level", o.Level),
			zap.String("referred_by", o.ReferredBy),
		)
	}
	metrics.OrphansDropped.Add(float64(len(orphans)))

	return models.NetworkTree{
		Root:            tree,
		MaxVisibleDepth: MaxVisibleDepth(root.Rank),
		Orphans:         len(orphans),
	}, nil
}

// VisibleTree loads username and returns the part of its network its rank allows it to see.
func (s *Service) VisibleTree(ctx context.Context, username string) (models.NetworkTree, error) {
	user, err := s.Users.FindUser(ctx, username)
	if err != nil {
		if errors.KindOf(err) != errors.Other {
			return models.NetworkTree{}, err
		}
		return models.NetworkTree{}, errors.TransportErr(fmt.Sprintf("find user %s", username), err)
	}

	tree, err := s.Tree(ctx, user)
	if err != nil {
		return models.NetworkTree{}, err
	}
	tree.Root = Visible(tree.Root, tree.MaxVisibleDepth)
	return tree, nil
}
