package dispatch

// Command maps a CLI command name to the package script it delegates to
type Command struct {
	Name        string
	Script      string
	Description string
}

// Table is the ordered set of dispatchable commands
type Table []Command

// DefaultTable returns every command the CLI understands, in usage order
func DefaultTable() Table {
	return Table{
		{Name: "setup", Script: "setup", Description: "Set up the SpecGen application"},
		{Name: "setup-low-memory", Script: "setup-low-memory", Description: "Set up the application on a low-memory host"},
		{Name: "dev", Script: "dev", Description: "Run the application in development mode"},
		{Name: "build", Script: "build", Description: "Build the admin and user applications"},
		{Name: "start", Script: "start", Description: "Start the server"},
		{Name: "deploy", Script: "deploy", Description: "Deploy the application locally"},
		{Name: "deploy:ec2", Script: "deploy:ec2", Description: "Deploy the application to EC2"},
		{Name: "deploy:stop", Script: "deploy:stop", Description: "Stop the deployed application"},
		{Name: "deploy:restart", Script: "deploy:restart", Description: "Restart the deployed application"},
		{Name: "deploy:update", Script: "deploy:update", Description: "Update the deployed application"},
		{Name: "deploy:status", Script: "deploy:status", Description: "Show the status of the deployed application"},
		{Name: "deploy:backup", Script: "deploy:backup", Description: "Back up the deployed application"},
		{Name: "backup", Script: "backup:database", Description: "Create a backup of the database"},
		{Name: "restore", Script: "restore:database", Description: "Restore the database from backup"},
		{Name: "production", Script: "production", Description: "Run the application in production mode"},
		{Name: "production-low-memory", Script: "production-low-memory", Description: "Run in production mode on a low-memory host"},
		{Name: "troubleshoot", Script: "troubleshoot", Description: "Diagnose common installation problems"},
	}
}

// Lookup returns the command registered under name
func (t Table) Lookup(name string) (Command, bool) {
	for _, cmd := range t {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Names returns the command names in table order
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, cmd := range t {
		names[i] = cmd.Name
	}
	return names
}
