package account_test

import (
	"context"
	"filingflow/account"
	"filingflow/persistence"
	"filingflow/testinfra"
	"testing"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("filingflow")
	assert.Nil(t, db.DS.GormDB(context.Background()).AutoMigrate(&account.Operator{}).Error)
	persistence.ActiveDataSourceManager = db.DS
	*testDatabase = db
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestActiveOperatorSnapshot(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("snapshot partitions active operators by role in id order", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		db := testDatabase.DS.GormDB(context.Background())
		Expect(db.Create(&account.Operator{ID: 11, Name: "bob", Role: account.RoleBookkeeper, Active: true}).Error).To(BeNil())
		Expect(db.Create(&account.Operator{ID: 10, Name: "ann", Role: account.RoleBookkeeper, Active: true}).Error).To(BeNil())
		Expect(db.Create(&account.Operator{ID: 20, Name: "meg", Role: account.RoleManager, Active: true}).Error).To(BeNil())
		Expect(db.Create(&account.Operator{ID: 30, Name: "pat", Role: account.RolePartner, Active: true}).Error).To(BeNil())
		Expect(db.Create(&account.Operator{ID: 12, Name: "gone", Role: account.RoleBookkeeper, Active: false}).Error).To(BeNil())

		snapshot, err := account.ActiveOperatorSnapshot()
		Expect(err).To(BeNil())
		Expect(snapshot.Bookkeepers).To(Equal([]types.ID{10, 11}))
		Expect(snapshot.Managers).To(Equal([]types.ID{20}))
		Expect(snapshot.Partners).To(Equal([]types.ID{30}))
	})

	t.Run("empty staff yields an empty snapshot", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		snapshot, err := account.ActiveOperatorSnapshot()
		Expect(err).To(BeNil())
		Expect(snapshot.Bookkeepers).To(BeEmpty())
		Expect(snapshot.Managers).To(BeEmpty())
		Expect(snapshot.Partners).To(BeEmpty())
	})
}

func TestFindOperator(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should load one operator by id", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		db := testDatabase.DS.GormDB(context.Background())
		Expect(db.Create(&account.Operator{ID: 10, Name: "ann", Email: "ann@example.com",
			Role: account.RoleBookkeeper, Active: true}).Error).To(BeNil())

		operator, err := account.FindOperator(10)
		Expect(err).To(BeNil())
		Expect(operator.Name).To(Equal("ann"))
		Expect(operator.Role).To(Equal(account.RoleBookkeeper))

		_, err = account.FindOperator(999)
		Expect(err).ToNot(BeNil())
	})
}

func TestHashSha256(t *testing.T) {
	RegisterTestingT(t)

	t.Run("hash is deterministic and hex encoded", func(t *testing.T) {
		Expect(account.HashSha256("glen8976")).To(Equal(account.HashSha256("glen8976")))
		Expect(account.HashSha256("glen8976")).ToNot(Equal(account.HashSha256("glen8977")))
		Expect(account.HashSha256("")).To(HaveLen(64))
	})
}
