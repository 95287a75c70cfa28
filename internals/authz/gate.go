package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	atividadeModel "escolar_backend/internals/features/school/activities/model"
	avisoModel "escolar_backend/internals/features/school/announcements/model"
	notaModel "escolar_backend/internals/features/school/grades/model"
	mensagemModel "escolar_backend/internals/features/school/messages/model"
)

// Gate de mutação: todo endpoint de update/delete por ID re-deriva o escopo
// aqui, independente do Query Builder — chegar num registro por ID direto não
// pode furar a regra de lista. A resposta para "não existe" e "existe mas é
// de outra escola/autor" é a mesma (ErrNaoEncontrado).

func existeNoEscopo(q *gorm.DB) error {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// gateAutorado aplica a regra comum das entidades autoradas por professor.
func gateAutorado(q *gorm.DB, ident Identity, escolaID uuid.UUID, escolaCol, autorCol string) error {
	switch ident.Papel {
	case PapelAdminGeral:
		// bypass do tenant: o operador global enxerga todas as escolas
	case PapelAdminEscola:
		q = q.Where(escolaCol+" = ?", escolaID)
	case PapelProfessor:
		q = q.Where(escolaCol+" = ?", escolaID).Where(autorCol+" = ?", ident.ProfessorID)
	default:
		return ErrNaoEncontrado
	}
	return existeNoEscopo(q)
}

func GateMutarProva(db *gorm.DB, ident Identity, escolaID, provaID uuid.UUID) error {
	q := db.Model(&atividadeModel.ProvaModel{}).Where("prova_id = ?", provaID)
	return gateAutorado(q, ident, escolaID, "prova_escola_id", "prova_professor_id")
}

func GateMutarExercicio(db *gorm.DB, ident Identity, escolaID, exercicioID uuid.UUID) error {
	q := db.Model(&atividadeModel.ExercicioModel{}).Where("exercicio_id = ?", exercicioID)
	return gateAutorado(q, ident, escolaID, "exercicio_escola_id", "exercicio_professor_id")
}

func GateMutarMensagem(db *gorm.DB, ident Identity, escolaID, mensagemID uuid.UUID) error {
	q := db.Model(&mensagemModel.MensagemModel{}).Where("mensagem_id = ?", mensagemID)
	return gateAutorado(q, ident, escolaID, "mensagem_escola_id", "mensagem_professor_id")
}

func GateMutarNota(db *gorm.DB, ident Identity, escolaID, notaID uuid.UUID) error {
	q := db.Model(&notaModel.NotaModel{}).Where("nota_id = ?", notaID)
	return gateAutorado(q, ident, escolaID, "nota_escola_id", "nota_professor_id")
}

// GateMutarAviso — avisos são autorados por user (admin ou professor).
func GateMutarAviso(db *gorm.DB, ident Identity, escolaID, avisoID uuid.UUID) error {
	q := db.Model(&avisoModel.AvisoModel{}).Where("aviso_id = ?", avisoID)
	switch ident.Papel {
	case PapelAdminGeral:
	case PapelAdminEscola:
		q = q.Where("aviso_escola_id = ?", escolaID)
	case PapelProfessor:
		q = q.Where("aviso_escola_id = ? AND aviso_user_id = ?", escolaID, ident.UserID)
	default:
		return ErrNaoEncontrado
	}
	return existeNoEscopo(q)
}

// GateMarcarMensagemLida — só o responsável vinculado ao aluno destinatário
// pode marcar como lida (nem admins: a leitura é um ato do responsável).
func GateMarcarMensagemLida(db *gorm.DB, ident Identity, escolaID, mensagemID uuid.UUID) error {
	if ident.Papel != PapelResponsavel {
		return ErrNaoEncontrado
	}
	alunos, err := AlunoIDsDoResponsavel(db, escolaID, ident.ResponsavelIDs)
	if err != nil {
		return err
	}
	if len(alunos) == 0 {
		return ErrNaoEncontrado
	}
	q := db.Model(&mensagemModel.MensagemModel{}).
		Where("mensagem_id = ? AND mensagem_escola_id = ? AND mensagem_aluno_id IN ?", mensagemID, escolaID, alunos)
	return existeNoEscopo(q)
}
