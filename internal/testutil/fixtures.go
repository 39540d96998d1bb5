package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
)

// Fixture holds the ids of a seeded user and the rows it depends on
type Fixture struct {
	DepartmentUUID  string
	DesignationUUID string
	UserUUID        string
	UserName        string
	UserEmail       string
	ClientUUID      string
	JobUUID         string
}

// Seed inserts a department, a designation, a user, a client and a job with
// unique names so parallel runs against the same database do not collide.
func Seed(t *testing.T, client *postgres.Client) Fixture {
	t.Helper()
	ctx := context.Background()
	db := client.DB()
	now := Now()

	f := Fixture{
		DepartmentUUID:  NewID(t),
		DesignationUUID: NewID(t),
		UserUUID:        NewID(t),
		ClientUUID:      NewID(t),
		JobUUID:         NewID(t),
	}
	f.UserName = "user-" + f.UserUUID
	f.UserEmail = f.UserUUID + "@example.com"

	_, err := db.ExecContext(ctx, `INSERT INTO hr.department (uuid, name, created_at) VALUES ($1, $2, $3)`,
		f.DepartmentUUID, "dept-"+f.DepartmentUUID, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO hr.designation (uuid, name, created_at) VALUES ($1, $2, $3)`,
		f.DesignationUUID, "desg-"+f.DesignationUUID, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO hr.users (uuid, name, department_uuid, designation_uuid, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.UserUUID, f.UserName, f.DepartmentUUID, f.DesignationUUID, f.UserEmail, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO lib.client (uuid, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		f.ClientUUID, "client-"+f.ClientUUID, f.UserUUID, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO lib.job (uuid, work_order, client_uuid, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		f.JobUUID, "WO-"+f.JobUUID, f.ClientUUID, f.UserUUID, now)
	require.NoError(t, err)

	return f
}
