package stage

type FilingType string

const (
	TypeVatReturn      FilingType = "VAT_RETURN"
	TypeAnnualAccounts FilingType = "ANNUAL_ACCOUNTS"
)

const (
	AwaitingRecords        = "AWAITING_RECORDS"
	InProgress             = "IN_PROGRESS"
	QueriesSent            = "QUERIES_SENT"
	ManagerReview          = "MANAGER_REVIEW"
	PartnerReview          = "PARTNER_REVIEW"
	SentToPartner          = "SENT_TO_PARTNER"
	SentToClient           = "SENT_TO_CLIENT"
	ClientApproved         = "CLIENT_APPROVED"
	Filed                  = "FILED"
	FiledCompaniesRegister = "FILED_COMPANIES_REGISTER"
	FiledTaxAuthority      = "FILED_TAX_AUTHORITY"
)

// Catalog is the closed, ordered stage set of one filing type.
// The last stage is the terminal one. Catalogs are fixed at build time;
// the two filing types evolved separately and are kept separate on purpose.
type Catalog struct {
	Type   FilingType
	Stages []string
}

var vatReturnCatalog = Catalog{
	Type: TypeVatReturn,
	Stages: []string{
		AwaitingRecords,
		InProgress,
		QueriesSent,
		ManagerReview,
		PartnerReview,
		SentToClient,
		ClientApproved,
		Filed,
	},
}

var annualAccountsCatalog = Catalog{
	Type: TypeAnnualAccounts,
	Stages: []string{
		AwaitingRecords,
		InProgress,
		QueriesSent,
		ManagerReview,
		SentToPartner,
		SentToClient,
		ClientApproved,
		FiledCompaniesRegister,
		FiledTaxAuthority,
	},
}

func CatalogOf(t FilingType) (*Catalog, bool) {
	switch t {
	case TypeVatReturn:
		return &vatReturnCatalog, true
	case TypeAnnualAccounts:
		return &annualAccountsCatalog, true
	}
	return nil, false
}

func (c *Catalog) Contains(stage string) bool {
	for _, s := range c.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

func (c *Catalog) Initial() string {
	return c.Stages[0]
}

func (c *Catalog) Terminal() string {
	return c.Stages[len(c.Stages)-1]
}

func (c *Catalog) IsTerminal(stage string) bool {
	return stage == c.Terminal()
}

// stage groups driving auto assignment

func IsChaseStage(stage string) bool {
	return stage == AwaitingRecords
}

func IsInProgressStage(stage string) bool {
	return stage == InProgress || stage == QueriesSent
}

func IsManagerReviewStage(stage string) bool {
	return stage == ManagerReview
}

func IsPartnerReviewStage(stage string) bool {
	return stage == PartnerReview || stage == SentToPartner
}

func IsClientFacingStage(stage string) bool {
	return stage == SentToClient || stage == ClientApproved ||
		stage == Filed || stage == FiledCompaniesRegister || stage == FiledTaxAuthority
}
