package core

type PutStat struct {
	Received         int64 `json:"received"`
	ErrorsValidation int64 `json:"errors_validation"`
	ErrorsInternal   int64 `json:"errors_internal"`
	Success          int64 `json:"success"`
}

type GetStat struct {
	Received         int64 `json:"received"`
	ErrorsValidation int64 `json:"errors_validation"`
	ErrorsNotFound   int64 `json:"errors_not_found"`
	ErrorsInternal   int64 `json:"errors_internal"`
	Success          int64 `json:"success"`
}

type PurgeStat struct {
	Received int64 `json:"received"`
	Errors   int64 `json:"errors"`
	Removed  int64 `json:"removed"`
}

type InfoStat struct {
	Received int64 `json:"received"`
}

type Statistics struct {
	Info  InfoStat  `json:"info"`
	Put   PutStat   `json:"put"`
	Get   GetStat   `json:"get"`
	Purge PurgeStat `json:"purge"`
}

// Info returns a copy of the counters.
func (c *Core) Info() Statistics {
	c.mtx.Lock()
	c.statistics.Info.Received++
	statistics := c.statistics
	c.mtx.Unlock()
	return statistics
}
