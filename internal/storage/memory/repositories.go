package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

type users struct{ *unit }

func (r users) GetUserByID(_ context.Context, userID int) (*model.User, error) {
	d, release := r.acquire()
	defer release()

	user, ok := d.Users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	return &user, nil
}

func (r users) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	d, release := r.acquire()
	defer release()

	for _, user := range d.Users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (r users) GetUserByTelegramUsername(_ context.Context, username string) (*model.User, error) {
	d, release := r.acquire()
	defer release()

	for _, user := range d.Users {
		if user.TelegramUsername != nil && *user.TelegramUsername == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (r users) ListStaff(_ context.Context) ([]model.User, error) {
	d, release := r.acquire()
	defer release()

	return filterUsers(d, func(u model.User) bool { return u.Role == model.RoleStaff }), nil
}

func (r users) ListStaffByManager(_ context.Context, managerID int) ([]model.User, error) {
	d, release := r.acquire()
	defer release()

	return filterUsers(d, func(u model.User) bool {
		return u.Role == model.RoleStaff && u.ManagerID != nil && *u.ManagerID == managerID
	}), nil
}

func filterUsers(d *data, keep func(model.User) bool) []model.User {
	var result []model.User
	for _, user := range d.Users {
		if keep(user) {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r users) CreateUser(_ context.Context, user *model.User) (int, error) {
	d, release := r.acquireWrite()
	defer release()

	for _, existing := range d.Users {
		if existing.Username == user.Username {
			return 0, fmt.Errorf("failed to create user: username %q already exists", user.Username)
		}
	}

	d.Seq.User++
	user.ID = d.Seq.User
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	d.Users[user.ID] = *user
	return user.ID, r.commit(d)
}

type catalog struct{ *unit }

func (r catalog) GetModule(_ context.Context, moduleID int) (*model.TrainingModule, error) {
	d, release := r.acquire()
	defer release()

	module, ok := d.Modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("training module %d: %w", moduleID, model.ErrNotFound)
	}
	return &module, nil
}

func (r catalog) GetModuleByTitle(_ context.Context, title string) (*model.TrainingModule, error) {
	d, release := r.acquire()
	defer release()

	for _, module := range d.Modules {
		if module.Title == title {
			return &module, nil
		}
	}
	return nil, nil
}

func (r catalog) ListActiveModules(_ context.Context) ([]model.TrainingModule, error) {
	d, release := r.acquire()
	defer release()

	var modules []model.TrainingModule
	for _, module := range d.Modules {
		if module.Active {
			module.Questions = nil
			modules = append(modules, module)
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })
	return modules, nil
}

func (r catalog) CreateModule(_ context.Context, module *model.TrainingModule) (int, error) {
	d, release := r.acquireWrite()
	defer release()

	for _, existing := range d.Modules {
		if existing.Title == module.Title {
			return 0, fmt.Errorf("failed to create training module: title %q already exists", module.Title)
		}
	}

	d.Seq.Module++
	module.ID = d.Seq.Module

	questions := make([]model.Question, len(module.Questions))
	for qi, q := range module.Questions {
		d.Seq.Question++
		q.ID = d.Seq.Question
		q.ModuleID = module.ID
		q.Position = qi

		options := make([]model.Option, len(q.Options))
		for oi, o := range q.Options {
			d.Seq.Option++
			o.ID = d.Seq.Option
			o.QuestionID = q.ID
			options[oi] = o
		}
		q.Options = options
		questions[qi] = q
	}
	module.Questions = questions

	d.Modules[module.ID] = *module
	return module.ID, r.commit(d)
}

func (r catalog) SetModuleActive(_ context.Context, moduleID int, active bool) error {
	d, release := r.acquireWrite()
	defer release()

	module, ok := d.Modules[moduleID]
	if !ok {
		return fmt.Errorf("training module %d: %w", moduleID, model.ErrNotFound)
	}
	module.Active = active
	d.Modules[moduleID] = module
	return r.commit(d)
}

type paths struct{ *unit }

func (r paths) GetPath(_ context.Context, pathID int) (*model.OnboardingPath, error) {
	d, release := r.acquire()
	defer release()

	path, ok := d.Paths[pathID]
	if !ok {
		return nil, fmt.Errorf("onboarding path %d: %w", pathID, model.ErrNotFound)
	}
	return &path, nil
}

func (r paths) GetPathByName(_ context.Context, name string) (*model.OnboardingPath, error) {
	d, release := r.acquire()
	defer release()

	for _, path := range d.Paths {
		if path.Name == name {
			return &path, nil
		}
	}
	return nil, nil
}

func (r paths) CreatePath(_ context.Context, name string) (int, error) {
	d, release := r.acquireWrite()
	defer release()

	for _, existing := range d.Paths {
		if existing.Name == name {
			return 0, fmt.Errorf("failed to create onboarding path: name %q already exists", name)
		}
	}

	d.Seq.Path++
	d.Paths[d.Seq.Path] = model.OnboardingPath{ID: d.Seq.Path, Name: name}
	return d.Seq.Path, r.commit(d)
}

func (r paths) AddStep(_ context.Context, pathID int, stepName string, moduleID int) (int, error) {
	d, release := r.acquireWrite()
	defer release()

	path, ok := d.Paths[pathID]
	if !ok {
		return 0, fmt.Errorf("onboarding path %d: %w", pathID, model.ErrNotFound)
	}
	if _, ok := d.Modules[moduleID]; !ok {
		return 0, fmt.Errorf("training module %d: %w", moduleID, model.ErrNotFound)
	}

	d.Seq.Step++
	id := moduleID
	step := model.OnboardingStep{
		ID:       d.Seq.Step,
		PathID:   pathID,
		Name:     stepName,
		ModuleID: &id,
		Position: len(path.Steps),
	}
	path.Steps = append(append([]model.OnboardingStep(nil), path.Steps...), step)
	d.Paths[pathID] = path
	return step.ID, r.commit(d)
}

type progress struct{ *unit }

// LockUserModule не нужен: транзакции уже сериализованы мьютексом хранилища
func (r progress) LockUserModule(context.Context, int, int) error {
	return nil
}

func (r progress) LatestAttempt(_ context.Context, userID, moduleID int) (*model.Attempt, error) {
	d, release := r.acquire()
	defer release()

	var latest *model.Attempt
	for _, a := range d.Attempts {
		if a.UserID != userID || a.ModuleID != moduleID {
			continue
		}
		if latest == nil || a.ID > latest.ID {
			a := a
			latest = &a
		}
	}
	return latest, nil
}

func (r progress) GetAttempt(_ context.Context, attemptID int) (*model.Attempt, error) {
	d, release := r.acquire()
	defer release()

	attempt, ok := d.Attempts[attemptID]
	if !ok {
		return nil, fmt.Errorf("attempt %d: %w", attemptID, model.ErrNotFound)
	}
	return &attempt, nil
}

func (r progress) GetAttemptForUpdate(ctx context.Context, attemptID int) (*model.Attempt, error) {
	return r.GetAttempt(ctx, attemptID)
}

func (r progress) CreateAttempt(_ context.Context, attempt *model.Attempt) (int, error) {
	d, release := r.acquireWrite()
	defer release()

	for _, a := range d.Attempts {
		if a.UserID == attempt.UserID && a.ModuleID == attempt.ModuleID && !a.Terminal() {
			return 0, fmt.Errorf("active attempt already exists for user %d module %d: %w",
				attempt.UserID, attempt.ModuleID, model.ErrInvalidState)
		}
	}

	d.Seq.Attempt++
	attempt.ID = d.Seq.Attempt
	d.Attempts[attempt.ID] = *attempt
	return attempt.ID, r.commit(d)
}

func (r progress) ListAnswers(_ context.Context, attemptID int) ([]model.Answer, error) {
	d, release := r.acquire()
	defer release()

	var answers []model.Answer
	for _, a := range d.Answers {
		if a.AttemptID == attemptID {
			answers = append(answers, a)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers, nil
}

func (r progress) UpsertAnswer(_ context.Context, answer *model.Answer) error {
	d, release := r.acquireWrite()
	defer release()

	if _, ok := d.Attempts[answer.AttemptID]; !ok {
		return fmt.Errorf("failed to save answer: attempt %d: %w", answer.AttemptID, model.ErrNotFound)
	}

	for id, existing := range d.Answers {
		if existing.AttemptID == answer.AttemptID && existing.QuestionID == answer.QuestionID {
			answer.ID = id
			d.Answers[id] = *answer
			return r.commit(d)
		}
	}

	d.Seq.Answer++
	answer.ID = d.Seq.Answer
	d.Answers[answer.ID] = *answer
	return r.commit(d)
}

func (r progress) CountCorrectAnswers(_ context.Context, attemptID int) (int, error) {
	d, release := r.acquire()
	defer release()

	count := 0
	for _, a := range d.Answers {
		if a.AttemptID == attemptID && a.IsCorrect {
			count++
		}
	}
	return count, nil
}

func (r progress) FinalizeAttempt(_ context.Context, attemptID int, score int, completedAt time.Time) (bool, error) {
	d, release := r.acquireWrite()
	defer release()

	attempt, ok := d.Attempts[attemptID]
	if !ok {
		return false, fmt.Errorf("attempt %d: %w", attemptID, model.ErrNotFound)
	}
	if attempt.Terminal() {
		return false, nil
	}

	attempt.Score = &score
	attempt.CompletedAt = &completedAt
	d.Attempts[attemptID] = attempt
	return true, r.commit(d)
}
