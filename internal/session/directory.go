package session

import (
	"fmt"
	"strconv"
	"sync"

	"noticeboard/internal/apperr"
	"noticeboard/internal/metrics"
	"noticeboard/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Credential is a seed account: the public identity plus its plaintext password.
type Credential struct {
	User     models.User
	Password string
}

type account struct {
	user models.User
	hash []byte
}

// Directory is the process-wide credential list shared by every visitor's Store.
type Directory struct {
	mu       sync.RWMutex
	accounts []account
	cost     int
	metrics  *metrics.Metrics
}

// NewDirectory hashes the seed credentials with the given bcrypt cost.
func NewDirectory(seed []Credential, cost int, m *metrics.Metrics) (*Directory, error) {
	d := &Directory{cost: cost, metrics: m}
	for _, c := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash seed account %s: %w", c.User.Email, err)
		}
		d.accounts = append(d.accounts, account{user: c.User, hash: hash})
	}
	m.SetAccounts(len(d.accounts))
	return d, nil
}

// Authenticate returns the identity whose email matches exactly and whose password verifies.
func (d *Directory) Authenticate(email, password string) (models.User, error) {
	d.mu.RLock()
	var found *account
	for i := range d.accounts {
		if d.accounts[i].user.Email == email {
			a := d.accounts[i]
			found = &a
			break
		}
	}
	d.mu.RUnlock()

	if found == nil {
		return models.User{}, apperr.ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword(found.hash, []byte(password)); err != nil {
		return models.User{}, apperr.ErrInvalidLogin
	}
	return found.user, nil
}

// Register appends a new user account. The id is one past the current account count.
func (d *Directory) Register(name, email, password string) (models.User, error) {
	if d.exists(email) {
		return models.User{}, apperr.ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// another signup may have taken the email while hashing
	for _, a := range d.accounts {
		if a.user.Email == email {
			return models.User{}, apperr.ErrDuplicateAccount
		}
	}

	user := models.User{
		ID:    strconv.Itoa(len(d.accounts) + 1),
		Name:  name,
		Email: email,
		Role:  models.RoleUser,
	}
	d.accounts = append(d.accounts, account{user: user, hash: hash})
	d.metrics.SetAccounts(len(d.accounts))
	return user, nil
}

func (d *Directory) exists(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.user.Email == email {
			return true
		}
	}
	return false
}

// Users lists public identities in registration order.
func (d *Directory) Users() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	users := make([]models.User, 0, len(d.accounts))
	for _, a := range d.accounts {
		users = append(users, a.user)
	}
	return users
}

func (d *Directory) Lookup(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return models.User{}, false
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
