package contract

// Contract is the signed agreement backing a project. Fields mirror the
// generated document sections; the numbered client fields cover the
// common two-signatory case (e.g. bride and groom).
type Contract struct {
	ID                 string `json:"id" row:",readonly"`
	ContractNumber     string `json:"contractNumber" validate:"required"`
	ClientID           string `json:"clientId"`
	ProjectID          string `json:"projectId"`
	SigningDate        string `json:"signingDate"`
	SigningLocation    string `json:"signingLocation"`
	ClientName1        string `json:"clientName1"`
	ClientAddress1     string `json:"clientAddress1"`
	ClientPhone1       string `json:"clientPhone1"`
	ClientName2        string `json:"clientName2"`
	ClientAddress2     string `json:"clientAddress2"`
	ClientPhone2       string `json:"clientPhone2"`
	ShootingDuration   string `json:"shootingDuration"`
	GuaranteedPhotos   string `json:"guaranteedPhotos"`
	AlbumDetails       string `json:"albumDetails"`
	DigitalFilesFormat string `json:"digitalFilesFormat"`
	OtherItems         string `json:"otherItems"`
	PersonnelCount     string `json:"personnelCount"`
	DeliveryTimeframe  string `json:"deliveryTimeframe"`
	DpDate             string `json:"dpDate"`
	FinalPaymentDate   string `json:"finalPaymentDate"`
	CancellationPolicy string `json:"cancellationPolicy"`
	Jurisdiction       string `json:"jurisdiction"`
	VendorSignature    string `json:"vendorSignature"`
	ClientSignature    string `json:"clientSignature"`
}

// EntityID implements store.Entity.
func (c Contract) EntityID() string { return c.ID }
