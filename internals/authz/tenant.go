package authz

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	escolaModel "escolar_backend/internals/features/school/escolas/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	userModel "escolar_backend/internals/features/users/user/model"
)

// EscolaHint é a indicação explícita de escola vinda da request (claim da
// sessão, header X-Active-Escola-ID ou slug do subdomínio).
type EscolaHint struct {
	ID   uuid.UUID
	Slug string
}

func (h EscolaHint) empty() bool { return h.ID == uuid.Nil && strings.TrimSpace(h.Slug) == "" }

// ResolveEscola fixa a escola ativa da request. Política determinística:
//   - hint presente → só vale se o principal ainda pertence à escola;
//   - sem hint → única escola do principal;
//   - múltiplas escolas sem hint → 404 (seleção explícita obrigatória, nunca
//     "primeira escola").
//
// admin_geral só precisa do hint (não há vínculo por escola).
func ResolveEscola(db *gorm.DB, userID uuid.UUID, hint EscolaHint) (escolaModel.EscolaModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return escolaModel.EscolaModel{}, ErrAcessoNegado
		}
		return escolaModel.EscolaModel{}, err
	}
	if !user.UserIsActive {
		return escolaModel.EscolaModel{}, ErrAcessoNegado
	}

	if !hint.empty() {
		escola, err := findEscola(db, hint)
		if err != nil {
			return escolaModel.EscolaModel{}, err
		}
		if user.UserIsAdminGeral {
			return escola, nil
		}
		ok, err := pertenceAEscola(db, userID, escola.EscolaID)
		if err != nil {
			return escolaModel.EscolaModel{}, err
		}
		if !ok {
			// mesmo 404 genérico: não confirmamos que a escola existe
			return escolaModel.EscolaModel{}, ErrEscolaNaoEncontrada
		}
		return escola, nil
	}

	if user.UserIsAdminGeral {
		// operador global sem hint não tem escola ativa
		return escolaModel.EscolaModel{}, ErrEscolaNaoEncontrada
	}

	ids, err := escolasDoUsuario(db, userID)
	if err != nil {
		return escolaModel.EscolaModel{}, err
	}
	if len(ids) != 1 {
		return escolaModel.EscolaModel{}, ErrEscolaNaoEncontrada
	}
	return findEscola(db, EscolaHint{ID: ids[0]})
}

// IsAdminGeral diz se o usuário é o administrador da plataforma. Usado nas
// rotas globais, que não passam pela resolução de escola.
func IsAdminGeral(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.UserIsActive && user.UserIsAdminGeral, nil
}

func findEscola(db *gorm.DB, hint EscolaHint) (escolaModel.EscolaModel, error) {
	var escola escolaModel.EscolaModel
	q := db.Where("escola_is_active = ?", true)
	if hint.ID != uuid.Nil {
		q = q.Where("escola_id = ?", hint.ID)
	} else {
		q = q.Where("LOWER(escola_slug) = LOWER(?)", strings.TrimSpace(hint.Slug))
	}
	if err := q.First(&escola).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return escolaModel.EscolaModel{}, ErrEscolaNaoEncontrada
		}
		return escolaModel.EscolaModel{}, err
	}
	return escola, nil
}

func pertenceAEscola(db *gorm.DB, userID, escolaID uuid.UUID) (bool, error) {
	ids, err := escolasDoUsuario(db, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == escolaID {
			return true, nil
		}
	}
	return false, nil
}

// escolasDoUsuario junta os vínculos das três origens: membership
// administrativo, registro de professor ativo e registros de responsável.
func escolasDoUsuario(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]struct{}{}
	var out []uuid.UUID

	add := func(ids []uuid.UUID) {
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}

	var admIDs []uuid.UUID
	if err := db.Model(&escolaModel.EscolaUsuarioModel{}).
		Where("escola_usuario_user_id = ? AND escola_usuario_is_active = ?", userID, true).
		Pluck("escola_usuario_escola_id", &admIDs).Error; err != nil {
		return nil, err
	}
	add(admIDs)

	var profIDs []uuid.UUID
	if err := db.Model(&tgModel.ProfessorModel{}).
		Where("professor_user_id = ? AND professor_is_active = ?", userID, true).
		Pluck("professor_escola_id", &profIDs).Error; err != nil {
		return nil, err
	}
	add(profIDs)

	var respIDs []uuid.UUID
	if err := db.Model(&tgModel.ResponsavelModel{}).
		Where("responsavel_user_id = ?", userID).
		Pluck("responsavel_escola_id", &respIDs).Error; err != nil {
		return nil, err
	}
	add(respIDs)

	return out, nil
}
