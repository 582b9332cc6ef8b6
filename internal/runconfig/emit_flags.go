package runconfig

// FlagEmitter flattens the run configuration into discrete runner flags, the
// current generation's intake.
type FlagEmitter struct{}

// Emit implements Emitter. Everything travels on the command line, so there
// is no transient file.
func (e *FlagEmitter) Emit(schema *Schema, rc *RunConfig) ([]string, *Transient, error) {
	args := []string{
		"-operator-image", rc.Images.Operator,
		"-admission-image", rc.Images.Admission,
		"-server-image", rc.Images.Server,
		"-server-image-upgrade", rc.Images.ServerUpgrade,
		"-mobile-image", rc.Images.SyncGateway,
		"-storage-class", rc.StorageClass,
		"-suite", rc.Suite,
	}

	args = append(args, rc.Clusters.Args()...)

	if rc.CollectLogs {
		args = append(args, "-collect-logs")
	}

	if rc.Docker != nil {
		args = append(args,
			"-docker-server", rc.Docker.Server,
			"-docker-username", rc.Docker.Username,
			"-docker-password", rc.Docker.Password,
		)
	}

	return args, nil, nil
}
