package invoicing

// CountUseCase reports how many qualifying orders an export contains. Used
// by the upload step of the UI for feedback before generating anything.
type CountUseCase struct {
	readers ReaderSet
}

// NewCountUseCase builds the use case.
func NewCountUseCase(readers ReaderSet) *CountUseCase {
	return &CountUseCase{readers: readers}
}

// CountOrders reconstructs the export and returns the order count. Zero is
// a valid answer here; only decode failures error.
func (uc *CountUseCase) CountOrders(raw []byte, filename string) (int, error) {
	orders, err := uc.readers.For(filename).ReadOrders(raw)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}
