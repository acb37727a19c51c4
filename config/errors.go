package config

import "fmt"

type InvalidValueError struct {
	Key    string
	Reason string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}
