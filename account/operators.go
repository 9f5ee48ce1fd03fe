package account

import (
	"crypto/sha256"
	"encoding/hex"
	"filingflow/domain/assign"
	"filingflow/persistence"

	"github.com/fundwit/go-commons/types"
)

const (
	RoleBookkeeper = "BOOKKEEPER"
	RoleManager    = "MANAGER"
	RolePartner    = "PARTNER"
)

// Operator is a member of the practice staff who can carry filings.
type Operator struct {
	ID    types.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  string   `json:"role"`

	Secret string `json:"-"`
	Active bool   `json:"active"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

var (
	ActiveOperatorSnapshotFunc = ActiveOperatorSnapshot
)

// ActiveOperatorSnapshot loads the active operators partitioned by role,
// each group ordered by id so that resolution stays deterministic.
func ActiveOperatorSnapshot() (*assign.Snapshot, error) {
	var operators []Operator
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&Operator{Active: true}).Order("id ASC").Find(&operators).Error; err != nil {
		return nil, err
	}

	snapshot := assign.Snapshot{}
	for _, op := range operators {
		switch op.Role {
		case RoleBookkeeper:
			snapshot.Bookkeepers = append(snapshot.Bookkeepers, op.ID)
		case RoleManager:
			snapshot.Managers = append(snapshot.Managers, op.ID)
		case RolePartner:
			snapshot.Partners = append(snapshot.Partners, op.ID)
		}
	}
	return &snapshot, nil
}

func FindOperator(id types.ID) (*Operator, error) {
	operator := Operator{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&Operator{ID: id}).First(&operator).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
