package authz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	escolaModel "escolar_backend/internals/features/school/escolas/model"
	tgModel "escolar_backend/internals/features/school/teachers_guardians/model"
	userModel "escolar_backend/internals/features/users/user/model"
)

// ResolveIdentity determina o papel do principal dentro da escola ativa.
// Precedência: admin_geral > vínculo admin_escola > professor ativo >
// responsável. Somente leitura; nada é cacheado entre requests porque
// papel e vínculos mudam ao longo do ano letivo.
func ResolveIdentity(db *gorm.DB, userID, escolaID uuid.UUID) (Identity, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrAcessoNegado
		}
		return Identity{}, err
	}
	if !user.UserIsActive {
		return Identity{}, ErrAcessoNegado
	}

	ident := Identity{UserID: userID}

	if user.UserIsAdminGeral {
		ident.Papel = PapelAdminGeral
		return ident, nil
	}

	// vínculo administrativo com a escola
	var vinculo int64
	if err := db.Model(&escolaModel.EscolaUsuarioModel{}).
		Where("escola_usuario_user_id = ? AND escola_usuario_escola_id = ? AND escola_usuario_is_active = ?",
			userID, escolaID, true).
		Count(&vinculo).Error; err != nil {
		return Identity{}, err
	}
	if vinculo > 0 {
		ident.Papel = PapelAdminEscola
		return ident, nil
	}

	// professor ativo na escola
	var prof tgModel.ProfessorModel
	err := db.Where("professor_user_id = ? AND professor_escola_id = ? AND professor_is_active = ?",
		userID, escolaID, true).
		First(&prof).Error
	switch {
	case err == nil:
		ident.Papel = PapelProfessor
		ident.ProfessorID = prof.ProfessorID
		return ident, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return Identity{}, err
	}

	// responsável (pode haver mais de um registro)
	var resps []tgModel.ResponsavelModel
	if err := db.Where("responsavel_user_id = ? AND responsavel_escola_id = ?", userID, escolaID).
		Find(&resps).Error; err != nil {
		return Identity{}, err
	}
	if len(resps) > 0 {
		ident.Papel = PapelResponsavel
		for _, r := range resps {
			ident.ResponsavelIDs = append(ident.ResponsavelIDs, r.ResponsavelID)
		}
		return ident, nil
	}

	return Identity{}, ErrAcessoNegado
}
