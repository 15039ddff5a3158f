package api

// GraphQL documents for the todo service.

const mutationSignup = `
mutation Signup($name: String!, $email: String!, $password: String!) {
  signup(name: $name, email: $email, password: $password)
}
`

const mutationLogin = `
mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password)
}
`

const queryTodos = `
query Todos {
  todos {
    id
    title
    done
    userId
  }
}
`

const mutationCreateTodo = `
mutation CreateTodo($title: String!) {
  createTodo(title: $title) {
    id
    title
    done
    userId
  }
}
`

const mutationUpdateTodo = `
mutation UpdateTodo($id: Int!, $title: String!, $done: Boolean!) {
  updateTodo(id: $id, title: $title, done: $done) {
    id
    title
    done
  }
}
`

const mutationDeleteTodo = `
mutation DeleteTodo($id: Int!) {
  deleteTodo(id: $id) {
    id
  }
}
`
