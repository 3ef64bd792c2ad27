package schedule

import (
	"context"

	domain "github.com/voluntree/scheduler/internal/domain/schedule"
)

type GetTemplate struct {
	repo domain.Repository
}

func NewGetTemplate(repo domain.Repository) *GetTemplate {
	return &GetTemplate{repo: repo}
}

func (uc *GetTemplate) Execute(
	ctx context.Context,
	providerID uint,
) (domain.WeeklyTemplate, error) {

	rules, err := uc.repo.ListRules(ctx, providerID)
	if err != nil {
		return domain.WeeklyTemplate{}, err
	}

	return domain.TemplateFromRules(rules), nil
}
