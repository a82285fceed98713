package transport

// SaveSupplierRequest is the body for both POST and PUT. Active is a
// pointer so an absent "estado" keeps the default instead of
// deactivating the supplier.
type SaveSupplierRequest struct {
	Name    string `json:"nombre"`
	RUC     string `json:"ruc"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Active  *bool  `json:"estado"`
}
