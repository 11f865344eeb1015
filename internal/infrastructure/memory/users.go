package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.PositionRepository = (*PositionRepo)(nil)
)

// UserRepo usuários em memória; email é único sem diferenciar maiúsculas.
type UserRepo struct{ a access }

func emailTaken(st *state, email, exceptID string) bool {
	for _, cur := range st.users {
		if cur.ID != exceptID && strings.EqualFold(cur.Email, email) {
			return true
		}
	}
	return false
}

// withPosition preenche o cargo atribuído, como o LEFT JOIN do PostgreSQL.
func withPosition(st *state, u entity.User) entity.User {
	u.PositionID, u.PositionName = "", ""
	if pid, ok := st.userPos[u.ID]; ok {
		u.PositionID = pid
		u.PositionName = st.positions[pid].Name
	}
	return u
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.a.with(func(st *state) {
		if emailTaken(st, u.Email, "") {
			err = domain.ErrEmailAlreadyExists
			return
		}
		st.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.users[u.ID]; !ok {
			return
		}
		if emailTaken(st, u.Email, u.ID) {
			err = domain.ErrEmailAlreadyExists
			return
		}
		st.users[u.ID] = *u
		err = nil
	})
	return err
}

func (r *UserRepo) SetPosition(_ context.Context, userID, positionID string) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.users[userID]; !ok {
			err = fmt.Errorf("%w: usuário inexistente", domain.ErrNotFound)
			return
		}
		if positionID == "" {
			delete(st.userPos, userID)
			return
		}
		if _, ok := st.positions[positionID]; !ok {
			err = fmt.Errorf("%w: cargo inexistente", domain.ErrNotFound)
			return
		}
		st.userPos[userID] = positionID
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.a.with(func(st *state) {
		if u, ok := st.users[id]; ok {
			u = withPosition(st, u)
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.a.with(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u = withPosition(st, u)
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]entity.User, error) {
	var list []entity.User
	r.a.with(func(st *state) {
		for _, u := range st.users {
			list = append(list, withPosition(st, u))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// PositionRepo cargos em memória; remover um cargo desfaz as atribuições.
type PositionRepo struct{ a access }

func (r *PositionRepo) Create(_ context.Context, p *entity.Position) error {
	r.a.with(func(st *state) { st.positions[p.ID] = *p })
	return nil
}

func (r *PositionRepo) Update(_ context.Context, p *entity.Position) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.positions[p.ID]; ok {
			st.positions[p.ID] = *p
			err = nil
		}
	})
	return err
}

func (r *PositionRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.positions[id]; !ok {
			return
		}
		delete(st.positions, id)
		for uid, pid := range st.userPos {
			if pid == id {
				delete(st.userPos, uid)
			}
		}
		err = nil
	})
	return err
}

func (r *PositionRepo) GetByID(_ context.Context, id string) (*entity.Position, error) {
	var out *entity.Position
	r.a.with(func(st *state) {
		if p, ok := st.positions[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PositionRepo) List(_ context.Context) ([]entity.Position, error) {
	var list []entity.Position
	r.a.with(func(st *state) {
		for _, p := range st.positions {
			list = append(list, p)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
