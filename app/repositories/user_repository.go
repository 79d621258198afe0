package repositories

import (
	"miniblog/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user, assigning it a fresh identifier
func (r *BadgerUserRepository) Create(user *models.User) error {
	user.ID = uuid.NewString()
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return err
	}

	data, err := marshalEntity(user)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user with the given email, or ErrNotFound.
func (r *BadgerUserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findFirst(func(u *models.User) bool {
		return u.Email == email
	})
}

// FindByUsernameOrEmail retrieves any user matching either the username or
// the email, or ErrNotFound. Used for the uniqueness re-check on register.
func (r *BadgerUserRepository) FindByUsernameOrEmail(username, email string) (*models.User, error) {
	return r.findFirst(func(u *models.User) bool {
		return u.Username == username || u.Email == email
	})
}

// DeleteAll removes every user and returns how many were deleted.
func (r *BadgerUserRepository) DeleteAll() (int, error) {
	var keys [][]byte

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// findFirst scans the user prefix and returns the first user matching the
// predicate. Badger has no secondary indexes, so lookups by anything other
// than the ID are linear scans.
func (r *BadgerUserRepository) findFirst(match func(*models.User) bool) (*models.User, error) {
	var found *models.User

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var user models.User
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &user)
			})
			if err != nil {
				return err
			}

			if match(&user) {
				found = &user
				return nil
			}
		}
		return ErrNotFound
	})

	if err != nil {
		return nil, err
	}
	return found, nil
}
