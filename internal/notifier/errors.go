package notifier

import "fmt"

// ListError reports that the store inventory could not be read
type ListError struct {
	StoreID string
	Err     error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("unable to list store %s: %v", e.StoreID, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// PublishError reports that the rendered inventory could not be published
type PublishError struct {
	TopicID string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("unable to publish to topic %s: %v", e.TopicID, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
