package vfs

// HomeDir is the home directory of the default tree
const HomeDir = "/home/devops"

// minimal PDF header so content sniffing reports application/pdf
var resumePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// Default builds the stock tree
func Default() *FS {
	fs := New(HomeDir)

	for _, dir := range []string{
		"Downloads", "Pictures", "Videos", "kubernetes", "terraform", "ansible", ".config",
		"projects/kubernetes-cluster", "projects/docker-compose-stack", "projects/terraform-infrastructure",
		"Documents/certificates",
	} {
		fs.MkdirAll(HomeDir + "/" + dir)
	}
	for _, dir := range []string{
		"/var/www/html", "/etc/nginx", "/etc/docker", "/etc/systemd", "/etc/ssh", "/usr/lib/systemd",
	} {
		fs.MkdirAll(dir)
	}

	fs.WriteFile(HomeDir+"/scripts/deploy.sh", []byte("#!/bin/bash\necho \"Deploying application...\"\n"))
	fs.WriteFile(HomeDir+"/scripts/backup.sh", []byte("#!/bin/bash\necho \"Running backup...\"\n"))
	fs.WriteFile(HomeDir+"/Documents/resume.pdf", resumePDF)
	fs.WriteFile(HomeDir+"/.bashrc", []byte("export PS1='\\u@\\h:\\w\\$ '\nalias k=kubectl\n"))
	fs.WriteFile(HomeDir+"/.gitconfig", []byte("[user]\n\tname = devops\n[init]\n\tdefaultBranch = main\n"))
	fs.WriteFile(HomeDir+"/kubernetes/deployment.yaml", []byte("apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: frontend\n"))
	fs.WriteFile(HomeDir+"/terraform/main.tf", []byte("provider \"aws\" {\n  region = \"us-east-1\"\n}\n"))
	fs.WriteFile("/var/log/nginx/access.log", []byte("192.168.1.100 - - [20/Jan/2024:10:31:23 +0000] \"GET / HTTP/1.1\" 200 612\n"))
	fs.WriteFile("/var/log/syslog", []byte("Jan 20 10:30:15 portfolio systemd[1]: Started nginx.service.\n"))
	fs.WriteFile("/var/log/kern.log", []byte("Jan 20 10:30:01 portfolio kernel: Linux version 5.15.0-91-generic\n"))
	fs.WriteFile("/var/www/html/index.html", []byte("<!DOCTYPE html>\n<html><head><title>Welcome to nginx!</title></head><body></body></html>\n"))
	for _, bin := range []string{"docker", "kubectl", "git", "terraform", "ansible"} {
		fs.WriteFile("/usr/bin/"+bin, []byte("\x7fELF\x02\x01\x01"))
	}
	return fs
}
