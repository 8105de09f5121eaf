// Package keygen generates SSH key pairs for EC2 key pair import.
//
// Private keys are PEM encoded. Public keys use the OpenSSH authorized_keys
// format accepted by ec2:ImportKeyPair.
package keygen
