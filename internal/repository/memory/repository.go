package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return repository.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

type InMemoryCategoryRepository struct {
	categories map[string]*model.Category
	mutex      sync.RWMutex
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: make(map[string]*model.Category),
	}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.categories {
		if existing.UserID == category.UserID && strings.EqualFold(existing.Name, category.Name) {
			return repository.ErrConflict
		}
	}
	r.categories[category.ID] = category
	return nil
}

func (r *InMemoryCategoryRepository) FindByID(ctx context.Context, userID, id string) (*model.Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	category, exists := r.categories[id]
	if !exists || category.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return category, nil
}

func (r *InMemoryCategoryRepository) FindByName(ctx context.Context, userID, name string) (*model.Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, category := range r.categories {
		if category.UserID == userID && strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryCategoryRepository) FindAll(ctx context.Context, userID string) ([]*model.Category, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var categories []*model.Category
	for _, category := range r.categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Position != categories[j].Position {
			return categories[i].Position < categories[j].Position
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.categories[category.ID]
	if !exists || existing.UserID != category.UserID {
		return repository.ErrNotFound
	}
	for _, other := range r.categories {
		if other.ID != category.ID && other.UserID == category.UserID && strings.EqualFold(other.Name, category.Name) {
			return repository.ErrConflict
		}
	}
	r.categories[category.ID] = category
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	category, exists := r.categories[id]
	if !exists || category.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *InMemoryCategoryRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Validate the full list before touching any position so a bad id
	// leaves every position as it was.
	for _, id := range ids {
		category, exists := r.categories[id]
		if !exists || category.UserID != userID {
			return repository.ErrNotFound
		}
	}
	for i, id := range ids {
		r.categories[id].Position = i
	}
	return nil
}

func (r *InMemoryCategoryRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	max := -1
	for _, category := range r.categories {
		if category.UserID == userID && category.Position > max {
			max = category.Position
		}
	}
	return max, nil
}

type InMemoryContactRepository struct {
	contacts map[string]*model.Contact
	mutex    sync.RWMutex
}

func NewInMemoryContactRepository() *InMemoryContactRepository {
	return &InMemoryContactRepository{
		contacts: make(map[string]*model.Contact),
	}
}

func (r *InMemoryContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.contacts {
		if existing.UserID == contact.UserID && strings.EqualFold(existing.Email, contact.Email) {
			return repository.ErrConflict
		}
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *InMemoryContactRepository) FindByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	contact, exists := r.contacts[id]
	if !exists || contact.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return contact, nil
}

func (r *InMemoryContactRepository) FindByEmail(ctx context.Context, userID, email string) (*model.Contact, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, contact := range r.contacts {
		if contact.UserID == userID && strings.EqualFold(contact.Email, email) {
			return contact, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryContactRepository) FindAll(ctx context.Context, userID string) ([]*model.Contact, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var contacts []*model.Contact
	for _, contact := range r.contacts {
		if contact.UserID == userID {
			contacts = append(contacts, contact)
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].Position != contacts[j].Position {
			return contacts[i].Position < contacts[j].Position
		}
		return contacts[i].Name < contacts[j].Name
	})
	return contacts, nil
}

func (r *InMemoryContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.contacts[contact.ID]
	if !exists || existing.UserID != contact.UserID {
		return repository.ErrNotFound
	}
	for _, other := range r.contacts {
		if other.ID != contact.ID && other.UserID == contact.UserID && strings.EqualFold(other.Email, contact.Email) {
			return repository.ErrConflict
		}
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *InMemoryContactRepository) Delete(ctx context.Context, userID, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	contact, exists := r.contacts[id]
	if !exists || contact.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *InMemoryContactRepository) DetachCategory(ctx context.Context, userID, categoryID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, contact := range r.contacts {
		if contact.UserID == userID && contact.CategoryID != nil && *contact.CategoryID == categoryID {
			contact.CategoryID = nil
		}
	}
	return nil
}

func (r *InMemoryContactRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, id := range ids {
		contact, exists := r.contacts[id]
		if !exists || contact.UserID != userID {
			return repository.ErrNotFound
		}
	}
	for i, id := range ids {
		r.contacts[id].Position = i
	}
	return nil
}

func (r *InMemoryContactRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	max := -1
	for _, contact := range r.contacts {
		if contact.UserID == userID && contact.Position > max {
			max = contact.Position
		}
	}
	return max, nil
}

type InMemorySentMailRepository struct {
	mails map[string]*model.SentMail
	mutex sync.RWMutex
}

func NewInMemorySentMailRepository() *InMemorySentMailRepository {
	return &InMemorySentMailRepository{
		mails: make(map[string]*model.SentMail),
	}
}

func (r *InMemorySentMailRepository) Create(ctx context.Context, mail *model.SentMail) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.mails {
		if existing.ContactID == mail.ContactID && existing.GmailID == mail.GmailID && mail.GmailID != "" {
			return repository.ErrConflict
		}
	}
	r.mails[mail.ID] = mail
	return nil
}

func (r *InMemorySentMailRepository) FindByContactID(ctx context.Context, contactID string) ([]*model.SentMail, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var mails []*model.SentMail
	for _, mail := range r.mails {
		if mail.ContactID == contactID {
			mails = append(mails, mail)
		}
	}
	sort.Slice(mails, func(i, j int) bool {
		return mails[i].SentAt.After(mails[j].SentAt)
	})
	return mails, nil
}

func (r *InMemorySentMailRepository) FindByGmailID(ctx context.Context, contactID, gmailID string) (*model.SentMail, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, mail := range r.mails {
		if mail.ContactID == contactID && mail.GmailID == gmailID {
			return mail, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemorySentMailRepository) DeleteByContactID(ctx context.Context, contactID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for id, mail := range r.mails {
		if mail.ContactID == contactID {
			delete(r.mails, id)
		}
	}
	return nil
}

type InMemoryDraftRepository struct {
	drafts map[string]*model.ManualDraft
	mutex  sync.RWMutex
}

func NewInMemoryDraftRepository() *InMemoryDraftRepository {
	return &InMemoryDraftRepository{
		drafts: make(map[string]*model.ManualDraft),
	}
}

func (r *InMemoryDraftRepository) Create(ctx context.Context, draft *model.ManualDraft) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.drafts[draft.ID] = draft
	return nil
}

func (r *InMemoryDraftRepository) FindByID(ctx context.Context, userID, id string) (*model.ManualDraft, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	draft, exists := r.drafts[id]
	if !exists || draft.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return draft, nil
}

func (r *InMemoryDraftRepository) FindAll(ctx context.Context, userID string) ([]*model.ManualDraft, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var drafts []*model.ManualDraft
	for _, draft := range r.drafts {
		if draft.UserID == userID {
			drafts = append(drafts, draft)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		ci, cj := draftContactKey(drafts[i]), draftContactKey(drafts[j])
		if ci != cj {
			return ci < cj
		}
		return drafts[i].Position < drafts[j].Position
	})
	return drafts, nil
}

// draftContactKey sorts the unplaced pool ahead of placed drafts.
func draftContactKey(d *model.ManualDraft) string {
	if d.ContactID == nil {
		return ""
	}
	return *d.ContactID
}

func (r *InMemoryDraftRepository) FindByContactID(ctx context.Context, userID string, contactID *string) ([]*model.ManualDraft, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var drafts []*model.ManualDraft
	for _, draft := range r.drafts {
		if draft.UserID != userID {
			continue
		}
		if contactID == nil && draft.ContactID == nil {
			drafts = append(drafts, draft)
		} else if contactID != nil && draft.ContactID != nil && *draft.ContactID == *contactID {
			drafts = append(drafts, draft)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].Position < drafts[j].Position
	})
	return drafts, nil
}

func (r *InMemoryDraftRepository) Update(ctx context.Context, draft *model.ManualDraft) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.drafts[draft.ID]
	if !exists || existing.UserID != draft.UserID {
		return repository.ErrNotFound
	}
	r.drafts[draft.ID] = draft
	return nil
}

func (r *InMemoryDraftRepository) Delete(ctx context.Context, userID, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	draft, exists := r.drafts[id]
	if !exists || draft.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

func (r *InMemoryDraftRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, id := range ids {
		draft, exists := r.drafts[id]
		if !exists || draft.UserID != userID {
			return repository.ErrNotFound
		}
	}
	for i, id := range ids {
		r.drafts[id].Position = i
	}
	return nil
}

func (r *InMemoryDraftRepository) MaxUnplacedPosition(ctx context.Context, userID string) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	max := -1
	for _, draft := range r.drafts {
		if draft.UserID == userID && draft.ContactID == nil && draft.Position > max {
			max = draft.Position
		}
	}
	return max, nil
}

func (r *InMemoryDraftRepository) DetachContact(ctx context.Context, userID, contactID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	tail := -1
	var detached []*model.ManualDraft
	for _, draft := range r.drafts {
		if draft.UserID != userID {
			continue
		}
		if draft.ContactID == nil {
			if draft.Position > tail {
				tail = draft.Position
			}
		} else if *draft.ContactID == contactID {
			detached = append(detached, draft)
		}
	}
	sort.Slice(detached, func(i, j int) bool {
		return detached[i].Position < detached[j].Position
	})
	for _, draft := range detached {
		tail++
		draft.ContactID = nil
		draft.Position = tail
	}
	return nil
}
