package priority

// DeliveryLine is one TRANSORDER_D_SUBFORM line of a delivery note.
type DeliveryLine struct {
	PartName string  `json:"PARTNAME"`
	Quantity float64 `json:"TQUANT"`
}

// DeliveryNote is a DOCUMENTS_D record. Field tags follow the ERP screen
// column names, which is how Priority exposes them over OData.
type DeliveryNote struct {
	DocumentNumber string         `json:"DOCNO"`
	CustomerName   string         `json:"CDES"`
	Date           string         `json:"CURDATE"`
	Price          float64        `json:"QPRICE"`
	Status         string         `json:"STATDES"`
	Lines          []DeliveryLine `json:"TRANSORDER_D_SUBFORM"`
}

// ContainerOrder is a PORDERS record for a purchase order with a container
// at or en route to the port.
type ContainerOrder struct {
	OrderName    string  `json:"ORDNAME"`
	SupplierName string  `json:"SUPNAME"`
	SupplierDesc string  `json:"CDES"`
	Date         string  `json:"CURDATE"`
	Price        float64 `json:"QPRICE"`
	Status       string  `json:"STATDES"`
	ImportFile   string  `json:"IMPFNUM"`
	ETA          string  `json:"NOA_ETA"`
	ETD          string  `json:"NOA_ETD"`
	Container    string  `json:"NOA_KONTAINER"`
}

// odataEnvelope is the standard OData collection wrapper.
type odataEnvelope[T any] struct {
	Value []T `json:"value"`
}
