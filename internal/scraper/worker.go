package scraper

// Worker is a background job whose result the API polls by id.
type Worker interface {
	StartWork()
	Result() interface{}
	Done() bool
	Error() error
}
