// README: Job type reference data.
package jobtype

import "fieldops/internal/types"

type JobType struct {
	ID   types.ID
	Name string
}
