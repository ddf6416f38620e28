package groupapp

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"yatube/internal/common"
	"yatube/internal/config"
	groupEntity "yatube/internal/core/group"
	groupPort "yatube/internal/ports/group"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]{1,50}$`)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// CreateGroup ایجاد گروه جدید
func (s *GroupService) CreateGroup(ctx context.Context, slug, title, description string) (*groupPort.GroupDTO, error) {
	slug = strings.TrimSpace(slug)
	title = strings.TrimSpace(title)

	errs := common.FieldErrors{}
	if !slugPattern.MatchString(slug) {
		errs["slug"] = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	}
	if title == "" {
		errs["title"] = "This field is required."
	} else if len([]rune(title)) > 200 {
		errs["title"] = "Ensure this value has at most 200 characters."
	}
	if len(errs) > 0 {
		return nil, errs
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}
	config.Logger.Info("group created", zap.String("slug", g.Slug))
	return groupPort.ToDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.ToDTO(g))
	}
	return dtos, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.ToDTO(g), nil
}
